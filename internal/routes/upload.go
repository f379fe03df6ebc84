package routes

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/immermex/dashboard-api/internal/metrics"
	"github.com/immermex/dashboard-api/pkg/utils"
)

const maxUploadBytes = 20 << 20

func (app *App) uploadHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.HttpRequestLatencySeconds.WithLabelValues("POST").Observe(time.Since(start).Seconds())
	}()

	if r.Method != http.MethodPost {
		utils.ReplyMethodNotAllowed(w)
		return
	}

	correlationID := uuid.NewString()
	logger := app.logger.With().Str("upload_id", correlationID).Logger()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.ReplyBadRequest(w, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("archivo")
	if err != nil {
		utils.ReplyBadRequest(w, "missing archivo field")
		return
	}
	defer file.Close()

	logger.Info().Str("archivo", header.Filename).Int64("bytes", header.Size).Msg("forwarding upload")

	result, err := app.Client.Upload(r.Context(), header.Filename, file)
	if err != nil {
		logger.Error().Err(err).Msg("upload failed")
		replyBackendError(w, err)
		return
	}

	// every cached response is for the previous dataset now
	if err := app.Fetcher.Clear(r.Context()); err != nil {
		logger.Warn().Err(err).Msg("cache clear after upload failed")
	}

	if result.UploadID == "" {
		result.UploadID = correlationID
	}
	logger.Info().
		Int("procesados", result.RegistrosProcesados).
		Int("omitidos", result.RegistrosOmitidos).
		Msg("upload processed")

	utils.ReplyJSON(w, http.StatusOK, utils.Body{
		"data": result,
	})
}

func (app *App) templateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.ReplyMethodNotAllowed(w)
		return
	}

	data, contentType, err := app.Client.Template(r.Context())
	if err != nil {
		replyBackendError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="plantilla_immermex.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

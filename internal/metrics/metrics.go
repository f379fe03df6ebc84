// Package metrics holds the prometheus collectors for the service.
package metrics

const ImmermexNamespace = "immermex"

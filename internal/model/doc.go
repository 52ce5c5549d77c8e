// Package model defines the prediction artifact consumed by the gateway: a
// preprocessing pipeline plus a regressor, loaded from a JSON, YAML or TOML
// document.
//
// The artifact is trained elsewhere. This package only fixes the contract
// between a validated policyholder record and the artifact:
//
//   - schema.go: the versioned row schema (column names, order and kinds)
//     and RowFromRecord, which assembles a record into that shape.
//   - document.go: the on-disk pipeline document.
//   - pipeline.go: Compile and Pipeline.Predict (encoding, scaling, regression).
//   - regressor.go: linear and tree-ensemble regressors.
//   - loader.go: Load, which reads a document from disk by file extension.
//
// A compiled Pipeline is immutable and safe for concurrent use.
package model

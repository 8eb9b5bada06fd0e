// Package models defines domain entities and persistence interfaces for the follow reciprocity service.
//
// The package contains two categories of types:
//
// 1. Transient values: exchanged between the submission flow and the backend, never persisted
//   - [AnalysisResult] : the two reciprocity lists returned by the backend
//   - [Upload] : a selected export file handed directly to the network layer
//
// 2. Persistent entities: database-backed records
//   - [AnalysisRecord] : counts-only audit row written by the backend per analysis
//
// Persistent entities implement the [Model] interface and are accessed through [Repository].
package models

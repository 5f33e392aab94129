// Package domain defines the error taxonomy shared by the nullmap packages.
//
// Every error carries a stable code of the form NM-<AREA>-<NNNN>:
//
//   - MAP: rejections by the concurrent map primitive
//   - CFG: configuration validation
//   - WRK: workload invariant checks
package domain

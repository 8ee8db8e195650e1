// Package services holds the academic record operations.
//
// The four engine operations (course lifecycle, instructor assignment,
// grading and enrollment) each run as one unit of work against a
// repositories.Store and keep no state between calls. Catalog and report
// services are plain reads and writes over the repositories.
package services

import "time"

// Clock returns the current time. Tests replace it to pin timestamps.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

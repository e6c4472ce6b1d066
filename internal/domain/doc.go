// Package domain contains the core business entities, value objects, and
// domain errors of the application: tasks, calendar dates and scored results.
// It is independent of any specific infrastructure or delivery mechanism.
package domain

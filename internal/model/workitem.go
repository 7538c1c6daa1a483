// Package model defines the core domain models used throughout the application.
package model

// WorkItem represents a single bug fetched from Azure DevOps.
//
// CreatedDate and ActivatedDate are the raw ISO-8601 strings from the API;
// they are empty when the remote field is unset. Description may contain
// HTML markup.
type WorkItem struct {
	Title         string
	State         string
	CreatedDate   string
	ActivatedDate string
	Description   string
	ID            int
}

// Package messages holds the user-facing texts of the form and its dialogs,
// in English and Bangla, and maps job errors to notifications.
package messages

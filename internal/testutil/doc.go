// Package testutil provides test doubles for translation backends and helpers
// for building CSV fixtures and asserting on the files a job writes.
package testutil

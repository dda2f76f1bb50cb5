// Package processor wires the command line to the translation job. It
// builds the translator stack from the configuration and either launches
// the GUI or runs the job in the terminal with a progress bar.
package processor

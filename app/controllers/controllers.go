// Package controllers holds the HTTP handlers for password validation and
// form sessions.
package controllers

import (
	"github.com/km-arc/go-passform/password"
)

// Recorder receives validation outcomes and session counts.
type Recorder interface {
	ObserveValidation(password.Kind)
	SetFormsActive(int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveValidation(password.Kind) {}
func (nopRecorder) SetFormsActive(int)              {}

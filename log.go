// Copyright (c) 2024, ircore authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ircore

import (
	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

// newDefaultLogger returns a logrus.Logger with the nested formatter
// applied, the formatting this core ships with when a caller opts in
// via WithDefaultLogFormatter instead of bringing their own.
func newDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"component", "sub-component", "remote"},
	})
	return logger
}

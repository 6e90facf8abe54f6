// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io"
	"time"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/audio"
	"github.com/sirupsen/logrus"
)

func newLogger(w io.Writer, level string, asJSON bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)

	if asJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log, nil
}

// logged reports the outcome and timing of stage under name.
func logged(log logrus.FieldLogger, name string, stage audfx.Stage) audfx.Stage {
	return func(buf *audio.Buffer) (*audio.Buffer, error) {
		start := time.Now()
		out, err := stage(buf)

		entry := log.WithFields(logrus.Fields{
			"stage":    name,
			"duration": time.Since(start),
		})
		if err != nil {
			entry.WithError(err).Error("stage failed")
			return nil, err
		}

		entry.WithFields(logrus.Fields{
			"frames":   out.Frames(),
			"channels": out.Channels(),
		}).Debug("stage done")

		return out, nil
	}
}

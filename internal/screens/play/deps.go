package play

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/hanziquiz/internal/session"
	"github.com/abhisek/hanziquiz/internal/userdata"
)

// FeedbackDelay is how long feedback stays up when auto-advance is on.
const FeedbackDelay = 1200 * time.Millisecond

// Deps are the collaborators every play screen shares.
type Deps struct {
	Engine   *session.Engine
	Repo     *userdata.Repo
	Settings userdata.Settings
	// Defaults seed the options of sessions started from the menu.
	Defaults session.Options
	// Sources lists the corpus units in first-seen order.
	Sources []string
	Log     logrus.FieldLogger
}

// Logger returns d.Log or the standard logger.
func (d Deps) Logger() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

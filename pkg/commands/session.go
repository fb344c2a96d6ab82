package commands

import (
	"context"
	"os"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

// session is what every diary command needs: config, a logger and the
// loaded diary.
type session struct {
	cfg   *store.FileConfig
	log   *zap.Logger
	diary *app.Diary
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	d, err := app.Open(ctx, p, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &session{cfg: cfg, log: log, diary: d}, nil
}

// printer renders to stdout with the stored theme and blur settings.
func (s *session) printer(showID bool) printers.PrettyPrint {
	theme := s.diary.Preferences().Theme
	return printers.PrettyPrint{
		ShowID:  showID,
		Palette: printers.NewPalette(theme, printers.Styled(os.Stdout)),
		Blurred: func(t entry.Tag) bool {
			return s.diary.Preferences().Blurred(t)
		},
	}
}

func (s *session) close() {
	_ = s.log.Sync()
}

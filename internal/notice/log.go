package notice

import (
	"sort"

	"go.uber.org/zap"
)

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier writes notices to logger. Refusals are logged at warn,
// identity changes at info.
func NewLogNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logNotifier{logger: logger}
}

func (l *logNotifier) Notify(n Notice) {
	fields := make([]zap.Field, 0, len(n.Attrs)+3)
	fields = append(fields,
		zap.String("notice_id", n.ID.String()),
		zap.String("kind", string(n.Kind)),
		zap.Time("at", n.At),
	)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, n.Attrs[k]))
	}

	if n.Kind.Refusal() {
		l.logger.Warn(n.Message, fields...)
		return
	}
	l.logger.Info(n.Message, fields...)
}

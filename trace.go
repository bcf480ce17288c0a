package parsec

import "go.uber.org/zap"

// WithTrace attaches a logger to the parse. Parsers wrapped with Traced log
// their evaluation against it at debug level. Without this option tracing
// is disabled and Traced wrappers cost one nil check.
func WithTrace[T comparable](logger *zap.Logger) Option[T] {
	return func(c *config[T]) { c.logger = logger }
}

// Traced logs entry, success, and failure of p under the given name when
// the parse was started with WithTrace.
func (p Parser[T, R]) Traced(name string) Parser[T, R] {
	mustParser(p)
	return Parser[T, R]{run: func(s *State[T], exp *ExpectedSet[T]) (R, bool) {
		log := s.cfg.logger
		if log == nil {
			return p.run(s, exp)
		}
		log.Debug("parser enter",
			zap.String("parser", name),
			zap.Int("offset", s.Offset()))
		v, ok := p.run(s, exp)
		if ok {
			log.Debug("parser match",
				zap.String("parser", name),
				zap.Int("offset", s.Offset()))
		} else {
			e := s.errSnapshot()
			log.Debug("parser fail",
				zap.String("parser", name),
				zap.Int("offset", s.Offset()),
				zap.Int("errorOffset", e.offset))
		}
		return v, ok
	}}
}

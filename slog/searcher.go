package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/blocksearch"
)

var (
	_ blocksearch.Searcher = (*LoggingSearcher)(nil)
	_ blocksearch.Parser   = (*LoggingParser)(nil)
)

// LoggingSearcher wraps a Searcher, logging how many matches each search
// produced.
type LoggingSearcher struct {
	next   blocksearch.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next blocksearch.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

func (s *LoggingSearcher) Search(root blocksearch.Node, blocks ...*blocksearch.Block) (matches []*blocksearch.Block) {
	defer func(begin time.Time) {
		tags := make([]string, len(blocks))
		for i, b := range blocks {
			if b != nil {
				tags[i] = b.Tag
			}
		}
		s.logger.Debug("search",
			"blocks", tags,
			"matches", len(matches),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Search(root, blocks...)
}

// LoggingParser wraps a Parser with logging.
type LoggingParser struct {
	next   blocksearch.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next blocksearch.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

func (p *LoggingParser) Parse(src string) (root blocksearch.Node, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"bytes", len(src),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(src)
}

package docmark

import (
	"errors"

	"github.com/alnah/go-docmark/internal/pipeline"
	"github.com/alnah/go-docmark/internal/yamlutil"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput        = errors.New("input has neither markdown nor HTML")
	ErrAmbiguousInput    = errors.New("input has both markdown and HTML")
	ErrSharedAccumulator = errors.New("inputs converted in parallel share a heading accumulator")

	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrHTMLParse      = pipeline.ErrHTMLParse
	ErrFrontMatter    = yamlutil.ErrFrontMatter

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")
)

package gedcom

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// maxLine bounds a single physical line. Anything longer is produced by
// binary garbage, not a genealogy program.
const maxLine = 1 << 20

// Decode parses one GEDCOM stream into a Database. The reader must be
// seekable: discovering a character-set declaration in the header while
// running on the fallback decoder rewinds the stream once and re-parses it
// with the declared decoder, from a clean assembler state.
//
// The returned Database is always non-nil and usable; a non-nil error is
// the latched *SyntaxError of the first malformed line.
func Decode(r io.ReadSeeker, opts Options) (*Database, error) {
	provider := opts.Charsets
	if provider == nil {
		provider = StdCharsets{}
	}

	size, _ := r.Seek(0, io.SeekEnd)
	progress := newProgressMeter(size, opts.OnProgress)

	// Pick the initial decoder: explicit override, else BOM sniffing.
	prefix := make([]byte, 4)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return NewDatabase(), fmt.Errorf("rewind: %w", err)
	}
	n, _ := io.ReadFull(r, prefix)
	enc, bomName := detectBOM(prefix[:n])

	charsetFixed := bomName != ""
	if opts.Charset != "" {
		if forced, ok := provider.Decoder(opts.Charset); ok {
			enc = forced
		}
		charsetFixed = true
	}

	var p *parser
	for attempt := 0; attempt < 2; attempt++ {
		p = newParser(opts)
		restart, err := runSession(r, enc, p, provider, charsetFixed, progress)
		if err != nil {
			return p.db, err
		}
		if restart == nil {
			break
		}
		// One-time restart with the declared decoder.
		enc = restart
		charsetFixed = true
		progress.reset()
	}

	p.flush()
	p.resolve()
	progress.done()

	if p.latched != nil {
		return p.db, p.latched
	}
	return p.db, nil
}

// runSession feeds the whole stream through one parser. It returns a
// non-nil encoding when the header declared a character set that requires
// the one-time restart.
func runSession(r io.ReadSeeker, enc encoding.Encoding, p *parser, provider CharsetProvider, charsetFixed bool, progress *progressMeter) (encoding.Encoding, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	scanner := bufio.NewScanner(transform.NewReader(r, enc.NewDecoder()))
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	tk := tokenizer{opts: p.opts}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		progress.advance(len(line) + 1)

		if strings.TrimSpace(line) == "" {
			continue
		}

		tok, serr := tk.Tokenize(line, lineNo)
		if serr != nil {
			// A line with no level digit is raw continuation text from
			// a producer that skipped the CONT tag.
			if serr.Code == ErrLevelMissing && p.continuation(line, lineNo) {
				continue
			}
			p.latch(serr)
			if !p.opts.ContinueOnError {
				break
			}
			continue
		}

		p.feed(tok)

		if !charsetFixed && tok.Level == 1 && tok.Tag == "CHAR" && p.db.Header != nil {
			charsetFixed = true
			if declared, ok := provider.Decoder(tok.Value); ok && declared != enc {
				return declared, nil
			}
			// Unsupported or identical declaration: keep the fallback.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	return nil, nil
}

// DecodeFile parses the GEDCOM file at path.
func DecodeFile(path string, opts Options) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, opts)
}

// DecodeBytes parses an in-memory GEDCOM stream.
func DecodeBytes(data []byte, opts Options) (*Database, error) {
	return Decode(bytes.NewReader(data), opts)
}

// progressMeter reports a monotonically non-decreasing completion fraction.
// The decoded byte count only approximates the raw stream position, so the
// meter clamps to [0,1] and never goes backwards, including across the
// charset restart.
type progressMeter struct {
	total   int64
	seen    int64
	last    float64
	handler func(float64)
}

func newProgressMeter(total int64, handler func(float64)) *progressMeter {
	return &progressMeter{total: total, handler: handler}
}

func (m *progressMeter) advance(n int) {
	if m.handler == nil || m.total <= 0 {
		return
	}
	m.seen += int64(n)
	frac := float64(m.seen) / float64(m.total)
	if frac > 1 {
		frac = 1
	}
	if frac > m.last {
		m.last = frac
		m.handler(frac)
	}
}

func (m *progressMeter) reset() {
	m.seen = 0
}

func (m *progressMeter) done() {
	if m.handler == nil {
		return
	}
	if m.last < 1 {
		m.last = 1
		m.handler(1)
	}
}

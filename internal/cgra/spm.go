package cgra

// SPM is the scratchpad memory: SPMLines lines of SPMWords 32-bit
// words each. It has no built-in access arbitration; LSU is the only
// slot that touches it, one line per cycle.
type SPM struct {
	lines [SPMLines][SPMWords]int32
}

func NewSPM() *SPM {
	return &SPM{}
}

// Line returns a copy of the given line.
func (s *SPM) Line(n int) ([SPMWords]int32, error) {
	if n < 0 || n >= SPMLines {
		return [SPMWords]int32{}, newErr(ErrBounds, "SPM", 0, 0, 0, "line index out of range")
	}
	return s.lines[n], nil
}

// SetLine overwrites a full line.
func (s *SPM) SetLine(n int, data [SPMWords]int32) error {
	if n < 0 || n >= SPMLines {
		return newErr(ErrBounds, "SPM", 0, 0, 0, "line index out of range")
	}
	s.lines[n] = data
	return nil
}

// Load seeds SPM contents row-major from a flat slice of words,
// writing the words in order (a short final line keeps the rest of its
// old contents) and ignoring words past the last line. This is the
// library-level counterpart of the CSV-driven data loader the original
// source treats as an external collaborator.
func (s *SPM) Load(words []int32) {
	for i, w := range words {
		line, col := i/SPMWords, i%SPMWords
		if line >= SPMLines {
			break
		}
		s.lines[line][col] = w
	}
}

package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxLineSize bounds one protocol line. Late-game frames with many units and
// events run to a few hundred kilobytes.
const maxLineSize = 8 << 20

// ErrUnknownMessage is returned for lines that are neither a config nor a frame.
var ErrUnknownMessage = errors.New("unknown message")

// Envelope is one classified line. Data is the raw line so handlers can
// decode it into their own types.
type Envelope struct {
	Type string
	Data json.RawMessage
}

// Classify decides what kind of message a line is.
func Classify(line []byte) (Envelope, error) {
	var p probe
	if err := json.Unmarshal(line, &p); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal message: %w", err)
	}
	data := json.RawMessage(append([]byte(nil), line...))
	if p.UnitInformation != nil {
		return Envelope{Type: TypeConfig, Data: data}, nil
	}
	if len(p.TurnInfo) == 0 {
		return Envelope{}, ErrUnknownMessage
	}
	switch p.TurnInfo[0] {
	case phaseDeploy:
		return Envelope{Type: TypeTurn, Data: data}, nil
	case phaseActionFrame:
		return Envelope{Type: TypeActionFrame, Data: data}, nil
	case phaseEndGame:
		return Envelope{Type: TypeEndGame, Data: data}, nil
	}
	return Envelope{}, fmt.Errorf("%w: phase %d", ErrUnknownMessage, p.TurnInfo[0])
}

// Reader splits the engine's stream into lines.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	return &Reader{scanner: s}
}

// ReadLine returns the next non-empty line, or io.EOF when the stream ends.
// The returned slice is only valid until the next call.
func (r *Reader) ReadLine() ([]byte, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		return line, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read line: %w", err)
	}
	return nil, io.EOF
}

// WriteLine encodes v as a single JSON line.
func WriteLine(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal line: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}

package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"fleetsim/internal/protocol"
)

// Header is the first JSON line of a recording.
type Header struct {
	Version     int                  `json:"version"`
	Seed        int64                `json:"seed"`
	WorldParams protocol.WorldParams `json:"world_params"`
	StartedAt   string               `json:"started_at"`
}

// Writer streams a run to disk: a JSON header line followed by one FRAME
// per line and a trailing RESULT line, all zstd-compressed.
type Writer struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewWriter(path string, h Header) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w := &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}
	if err := w.writeLine(h); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) WriteFrame(f protocol.FrameMsg) error   { return w.writeLine(f) }
func (w *Writer) WriteResult(r protocol.ResultMsg) error { return w.writeLine(r) }

func (w *Writer) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *Writer) Close() error {
	var err1 error
	if w.w != nil {
		err1 = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if err := w.enc.Close(); err1 == nil {
			err1 = err
		}
		w.enc = nil
	}
	if w.f != nil {
		if err := w.f.Close(); err1 == nil {
			err1 = err
		}
		w.f = nil
	}
	return err1
}

// Run is a fully decoded recording.
type Run struct {
	Header Header
	Frames []protocol.FrameMsg
	Result *protocol.ResultMsg
}

func ReadRun(path string) (Run, error) {
	var run Run
	f, err := os.Open(path)
	if err != nil {
		return run, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return run, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return run, err
		}
		return run, fmt.Errorf("recording %s: missing header", path)
	}
	if err := json.Unmarshal(sc.Bytes(), &run.Header); err != nil {
		return run, fmt.Errorf("recording header: %w", err)
	}

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		base, err := protocol.DecodeBase(line)
		if err != nil {
			return run, fmt.Errorf("recording line: %w", err)
		}
		switch base.Type {
		case protocol.TypeFrame:
			var fr protocol.FrameMsg
			if err := json.Unmarshal(line, &fr); err != nil {
				return run, err
			}
			run.Frames = append(run.Frames, fr)
		case protocol.TypeResult:
			var res protocol.ResultMsg
			if err := json.Unmarshal(line, &res); err != nil {
				return run, err
			}
			run.Result = &res
		}
	}
	return run, sc.Err()
}

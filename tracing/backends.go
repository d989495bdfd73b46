package tracing

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/elkey/datarecording"
)

// MemoryBackend keeps records in memory.
type MemoryBackend struct {
	lock    sync.Mutex
	records []Record
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Write appends a record.
func (b *MemoryBackend) Write(r Record) {
	b.lock.Lock()
	b.records = append(b.records, r)
	b.lock.Unlock()
}

// Flush does nothing.
func (b *MemoryBackend) Flush() {}

// Records returns a copy of the records, optionally only those of the given
// kinds.
func (b *MemoryBackend) Records(kinds ...string) []Record {
	b.lock.Lock()
	defer b.lock.Unlock()

	out := make([]Record, 0, len(b.records))
	for _, r := range b.records {
		if len(kinds) == 0 || contains(kinds, r.Kind) {
			out = append(out, r)
		}
	}

	return out
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}

	return false
}

var csvHeader = []string{
	"Time", "Kind", "Element", "Keyed", "Ready",
	"DahCounter", "Interval", "Dit", "Dah", "Count",
}

// CSVBackend writes records into a CSV file.
type CSVBackend struct {
	lock       sync.Mutex
	path       string
	file       *os.File
	writer     *csv.Writer
	records    []Record
	bufferSize int
}

// NewCSVBackend creates a CSVBackend that writes to path.csv. An empty path
// picks a unique name.
func NewCSVBackend(path string) *CSVBackend {
	return &CSVBackend{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the CSV file and registers the final flush at exit. It fails
// if the file already exists.
func (b *CSVBackend) Init() {
	if b.path == "" {
		b.path = "elkey_trace_" + xid.New().String()
	}

	filename := b.path + ".csv"
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}

	b.file = file
	b.writer = csv.NewWriter(file)

	if err := b.writer.Write(csvHeader); err != nil {
		panic(err)
	}

	atexit.Register(func() {
		b.Close()
	})
}

// Filename returns the name of the CSV file.
func (b *CSVBackend) Filename() string {
	return b.path + ".csv"
}

// Write buffers a record.
func (b *CSVBackend) Write(r Record) {
	b.lock.Lock()
	b.records = append(b.records, r)
	full := len(b.records) >= b.bufferSize
	b.lock.Unlock()

	if full {
		b.Flush()
	}
}

// Flush writes the buffered records to the file.
func (b *CSVBackend) Flush() {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.writer == nil {
		return
	}

	for _, r := range b.records {
		err := b.writer.Write([]string{
			strconv.FormatUint(r.Time, 10),
			r.Kind,
			r.Element,
			strconv.FormatBool(r.Keyed),
			strconv.FormatBool(r.Ready),
			strconv.FormatUint(uint64(r.DahCounter), 10),
			strconv.FormatUint(r.Interval, 10),
			strconv.FormatBool(r.Dit),
			strconv.FormatBool(r.Dah),
			strconv.FormatUint(r.Count, 10),
		})
		if err != nil {
			panic(err)
		}
	}

	b.records = nil

	b.writer.Flush()
	if err := b.writer.Error(); err != nil {
		panic(err)
	}
}

// Close flushes and closes the file. Closing twice does nothing.
func (b *CSVBackend) Close() {
	b.Flush()

	b.lock.Lock()
	defer b.lock.Unlock()

	if b.file == nil {
		return
	}

	if err := b.file.Close(); err != nil {
		panic(err)
	}

	b.file = nil
	b.writer = nil
}

// RecorderBackend stores records in a table of a data recorder.
type RecorderBackend struct {
	recorder datarecording.DataRecorder
	table    string
}

// NewRecorderBackend creates the trace table in the recorder.
func NewRecorderBackend(
	recorder datarecording.DataRecorder,
	table string,
) *RecorderBackend {
	recorder.CreateTable(table, Record{})

	return &RecorderBackend{recorder: recorder, table: table}
}

// Write inserts a record.
func (b *RecorderBackend) Write(r Record) {
	b.recorder.InsertData(b.table, r)
}

// Flush flushes the recorder.
func (b *RecorderBackend) Flush() {
	b.recorder.Flush()
}

// LogBackend prints one line per record.
type LogBackend struct {
	logger *log.Logger
}

// NewLogBackend creates a LogBackend.
func NewLogBackend(logger *log.Logger) *LogBackend {
	return &LogBackend{logger: logger}
}

// Write prints a record.
func (b *LogBackend) Write(r Record) {
	if r.Kind != KindTick {
		b.logger.Printf("%d %s paddles=%s", r.Time, r.Kind, paddles(r))
		return
	}

	key := "up"
	if r.Keyed {
		key = "DOWN"
	}

	b.logger.Printf("%d tick #%d %s key=%s paddles=%s ready=%t dah=%d next=%d",
		r.Time, r.Count, r.Element, key, paddles(r), r.Ready, r.DahCounter,
		r.Interval)
}

// Flush does nothing.
func (b *LogBackend) Flush() {}

func paddles(r Record) string {
	switch {
	case r.Dit && r.Dah:
		return "squeeze"
	case r.Dit:
		return "dit"
	case r.Dah:
		return "dah"
	default:
		return "none"
	}
}

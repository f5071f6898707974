package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// csvHeader lists every OrderEvent column in struct order. Empty feedback fields are
// written as blank cells.
var csvHeader = []string{
	"event_id", "event_type", "order_id", "restaurant_id", "status", "previous_status",
	"item_count", "grand_total", "payment_method", "rating", "tip", "tags", "timestamp",
}

func csvRecord(e OrderEvent) []string {
	optional := func(v int64) string {
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	}
	return []string{
		e.EventID, e.Type, e.OrderID, e.RestaurantID, e.Status, e.PreviousStatus,
		strconv.Itoa(int(e.ItemCount)),
		strconv.FormatFloat(e.GrandTotal, 'f', 2, 64),
		e.PaymentMethod,
		optional(int64(e.Rating)),
		optional(e.Tip),
		strings.Join(e.Tags, "|"),
		strconv.FormatInt(e.Timestamp, 10),
	}
}

// CSVOutput writes one CSV file per topic and hour with a fixed header.
type CSVOutput struct {
	basePath string
	folder   string
	mu       sync.Mutex
	files    map[string]*csvFile
}

type csvFile struct {
	file   *os.File
	writer *csv.Writer
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*csvFile),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}

	fullPath := partitionDir(c.basePath, c.folder, topic, event.Timestamp)
	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath(event.Timestamp))

	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.files[fileKey]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(fullPath, "data.csv"))
		if err != nil {
			return err
		}
		f = &csvFile{file: file, writer: csv.NewWriter(file)}
		c.files[fileKey] = f
		if err := f.writer.Write(csvHeader); err != nil {
			return err
		}
	}

	if err := f.writer.Write(csvRecord(event)); err != nil {
		return err
	}
	f.writer.Flush()
	return f.writer.Error()
}

func (c *CSVOutput) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var lastErr error
	for key, f := range c.files {
		f.writer.Flush()
		if err := f.writer.Error(); err != nil {
			lastErr = err
		}
		if err := f.file.Close(); err != nil {
			lastErr = err
		}
		delete(c.files, key)
	}
	return lastErr
}

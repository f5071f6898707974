package output

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"

	"github.com/chrisdamba/fooddash/internal/cloudwriter"
	"github.com/chrisdamba/fooddash/internal/models"
)

var eventTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func testOrder() *models.Order {
	return &models.Order{
		ID:            "ord1",
		RestaurantID:  "107",
		Status:        models.OrderStatusPreparing,
		Items:         []models.CartEntry{{ItemID: "m1", Quantity: 2}, {ItemID: "m6", Quantity: 1}},
		Bill:          models.Bill{GrandTotal: decimal.RequireFromString("25.12")},
		PaymentMethod: models.PaymentMethod{ID: "p1", Name: "Apple Pay"},
	}
}

func marshalEvent(t *testing.T, topic string, at time.Time) []byte {
	t.Helper()
	msg, err := json.Marshal(NewOrderEvent(topic, testOrder(), models.OrderStatusPlaced, at))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return msg
}

func TestNewOrderEvent(t *testing.T) {
	event := NewOrderEvent(models.TopicOrderStatus, testOrder(), models.OrderStatusPlaced, eventTime)
	if event.EventID == "" {
		t.Fatalf("missing event id")
	}
	if event.ItemCount != 3 || event.GrandTotal != 25.12 {
		t.Fatalf("event = %+v", event)
	}
	if event.Status != "preparing" || event.PreviousStatus != "placed" {
		t.Fatalf("statuses = %s <- %s", event.Status, event.PreviousStatus)
	}
	if event.Timestamp != eventTime.Unix() {
		t.Fatalf("timestamp = %d", event.Timestamp)
	}
}

func TestPartitionPath(t *testing.T) {
	if got := partitionPath(eventTime.Unix()); got != "year=2026/month=03/day=14/hour=09" {
		t.Fatalf("partitionPath = %s", got)
	}
}

func TestJSONOutputPartitionsByHour(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir, "events")

	for _, at := range []time.Time{eventTime, eventTime.Add(time.Minute), eventTime.Add(time.Hour)} {
		if err := out.WriteMessage(models.TopicOrderStatus, marshalEvent(t, models.TopicOrderStatus, at)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	first := filepath.Join(dir, "events", models.TopicOrderStatus, "year=2026", "month=03", "day=14", "hour=09", "data.json")
	second := filepath.Join(dir, "events", models.TopicOrderStatus, "year=2026", "month=03", "day=14", "hour=10", "data.json")
	if n := countLines(t, first); n != 2 {
		t.Fatalf("hour 09 has %d lines, want 2", n)
	}
	if n := countLines(t, second); n != 1 {
		t.Fatalf("hour 10 has %d lines, want 1", n)
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event OrderEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("line %d is not an event: %v", n+1, err)
		}
		n++
	}
	return n
}

func TestJSONOutputRejectsMissingTimestamp(t *testing.T) {
	out := NewJSONOutput(t.TempDir(), "events")
	defer out.Close()
	if err := out.WriteMessage("t", []byte(`{"order_id":"x"}`)); err == nil {
		t.Fatalf("expected error for event without timestamp")
	}
}

func TestCSVOutputWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	out := NewCSVOutput(dir, "events")
	for i := 0; i < 2; i++ {
		if err := out.WriteMessage(models.TopicOrderPlaced, marshalEvent(t, models.TopicOrderPlaced, eventTime)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "events", models.TopicOrderPlaced, "year=2026", "month=03", "day=14", "hour=09", "data.csv"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "event_id" {
		t.Fatalf("header = %v", records[0])
	}
}

func TestCSVOutputKeepsFeedbackColumns(t *testing.T) {
	dir := t.TempDir()
	out := NewCSVOutput(dir, "events")

	sparse := testOrder()
	sparse.Status = models.OrderStatusDelivered
	sparse.Feedback = &models.Feedback{Rating: 5}
	full := testOrder()
	full.ID = "ord2"
	full.Status = models.OrderStatusDelivered
	full.Feedback = &models.Feedback{Rating: 4, Tip: 7, Tags: []string{"Responsive", "Fast delivery"}}

	for _, order := range []*models.Order{sparse, full} {
		msg, err := json.Marshal(NewOrderEvent(models.TopicOrderFeedback, order, order.Status, eventTime))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if err := out.WriteMessage(models.TopicOrderFeedback, msg); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "events", models.TopicOrderFeedback, "year=2026", "month=03", "day=14", "hour=09", "data.csv"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}

	column := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		column[name] = i
	}
	for _, name := range []string{"rating", "tip", "tags"} {
		if _, ok := column[name]; !ok {
			t.Fatalf("header %v has no %s column", records[0], name)
		}
	}
	if got := records[1][column["tip"]]; got != "" {
		t.Fatalf("sparse tip = %q, want blank", got)
	}
	row := records[2]
	if row[column["rating"]] != "4" || row[column["tip"]] != "7" || row[column["tags"]] != "Responsive|Fast delivery" {
		t.Fatalf("full row = %v", row)
	}
}

func TestParquetOutputWritesFile(t *testing.T) {
	dir := t.TempDir()
	out, err := NewParquetOutput(&models.Config{OutputPath: dir, OutputFolder: "events", OutputDestination: "local"})
	if err != nil {
		t.Fatalf("new parquet output: %v", err)
	}
	if err := out.WriteMessage(models.TopicOrderStatus, marshalEvent(t, models.TopicOrderStatus, eventTime)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "events", models.TopicOrderStatus, "year=2026", "month=03", "day=14", "hour=09", "data.parquet"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("parquet file is empty")
	}
}

type memoryCloudWriter struct {
	buf    *bytes.Buffer
	closed *bool
}

func (m memoryCloudWriter) Write(p []byte) (int, error) {
	return m.buf.Write(p)
}

func (m memoryCloudWriter) Close() error {
	*m.closed = true
	return nil
}

type memoryCloudFactory struct {
	objects map[string]*bytes.Buffer
	closed  bool
}

func (f *memoryCloudFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	buf := &bytes.Buffer{}
	f.objects[bucket+"/"+objectPath] = buf
	return memoryCloudWriter{buf: buf, closed: &f.closed}, nil
}

func TestParquetOutputCloudObjectPath(t *testing.T) {
	factory := &memoryCloudFactory{objects: make(map[string]*bytes.Buffer)}
	out := NewCloudParquetOutput("events", "bucket", factory)
	if err := out.WriteMessage(models.TopicOrderStatus, marshalEvent(t, models.TopicOrderStatus, eventTime)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	key := "bucket/events/order_status_events/year=2026/month=03/day=14/hour=09/data.parquet"
	buf, ok := factory.objects[key]
	if !ok {
		t.Fatalf("no object at %s, have %v", key, factory.objects)
	}
	if !factory.closed || buf.Len() == 0 {
		t.Fatalf("object not flushed: closed=%v size=%d", factory.closed, buf.Len())
	}
}

func TestKafkaOutputSendsMessages(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event OrderEvent
		return json.Unmarshal(val, &event)
	})
	out := NewKafkaOutputWithProducer(producer)
	if err := out.WriteMessage(models.TopicOrderPlaced, marshalEvent(t, models.TopicOrderPlaced, eventTime)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := out.WriteMessage(models.TopicOrderPlaced, nil); err == nil {
		t.Fatalf("expected write after close to fail")
	}
}

func TestPublisherWritesToDestination(t *testing.T) {
	var buf bytes.Buffer
	console := &ConsoleOutput{w: &buf}
	p := NewPublisher(console)
	if err := p.Publish(models.TopicOrderStatus, testOrder(), models.OrderStatusPlaced, eventTime); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("[order_status_events] {")) {
		t.Fatalf("console output = %q", buf.String())
	}
}

func TestNewDestination(t *testing.T) {
	tests := []struct {
		name    string
		cfg     models.Config
		want    string
		wantErr bool
	}{
		{"console by default", models.Config{}, "*output.ConsoleOutput", false},
		{"json", models.Config{OutputPath: t.TempDir(), OutputFormat: "json"}, "*output.JSONOutput", false},
		{"csv", models.Config{OutputPath: t.TempDir(), OutputFormat: "csv"}, "*output.CSVOutput", false},
		{"unknown format", models.Config{OutputPath: t.TempDir(), OutputFormat: "xml"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			dest, err := NewDestination(&cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer dest.Close()
			if got := fmt.Sprintf("%T", dest); got != tt.want {
				t.Fatalf("destination = %s, want %s", got, tt.want)
			}
		})
	}
}

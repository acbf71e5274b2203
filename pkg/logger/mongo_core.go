package logger

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zapcore"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to MongoDB.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Caller    string    `bson:"caller,omitempty"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Fields    bson.M    `bson:"fields,omitempty"`
}

// MongoCore is a zapcore.Core that ships entries to a MongoDB collection
// from a background goroutine. Entries are dropped when the queue is full.
type MongoCore struct {
	zapcore.LevelEnabler

	sink   *mongoSink
	fields []zapcore.Field
}

type mongoSink struct {
	col    *mongo.Collection
	client *mongo.Client
	queue  chan LogDocument
	done   chan struct{}
	exited chan struct{}
}

// NewMongoCore connects to uri and returns a core writing to db.collection.
// Close must be called to flush pending documents.
func NewMongoCore(uri, db, collection string, level zapcore.LevelEnabler) (*MongoCore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	sink := &mongoSink{
		col:    col,
		client: client,
		queue:  make(chan LogDocument, mongoQueueSize),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go sink.drain()

	return &MongoCore{LevelEnabler: level, sink: sink}, nil
}

// AttachMongo tees a MongoCore into the base logger. It is a no-op when uri
// is empty.
func AttachMongo(uri, db string) error {
	if uri == "" {
		return nil
	}
	core, err := NewMongoCore(uri, db, "logs", zapcore.InfoLevel)
	if err != nil {
		return err
	}
	Attach(core, core.Close)
	return nil
}

func (c *MongoCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &MongoCore{LevelEnabler: c.LevelEnabler, sink: c.sink, fields: merged}
}

func (c *MongoCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *MongoCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	doc := LogDocument{
		Time:   ent.Time,
		Level:  ent.Level.String(),
		Msg:    ent.Message,
		Fields: bson.M{},
	}
	if ent.Caller.Defined {
		doc.Caller = ent.Caller.TrimmedPath()
	}
	for k, v := range enc.Fields {
		if k == "request_id" {
			doc.RequestID = fmt.Sprint(v)
			continue
		}
		doc.Fields[k] = v
	}

	select {
	case c.sink.queue <- doc:
	default:
	}
	return nil
}

func (c *MongoCore) Sync() error { return nil }

// Close flushes pending documents and disconnects. Safe to call twice.
func (c *MongoCore) Close() {
	s := c.sink
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}
	<-s.exited

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

func (s *mongoSink) drain() {
	defer close(s.exited)

	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = s.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for len(s.queue) > 0 {
				batch = append(batch, <-s.queue)
			}
			flush()
			return
		}
	}
}

// Package bundle writes the catalog as an MCAP file that holds only schema
// records: one per (message, encoding). Recording tools and viewers can load
// it to learn every schema without generated source files.
package bundle

import (
	"fmt"
	"io"

	"github.com/foxglove/mcap/go/mcap"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/codegen/jsonschema"
	"github.com/teranos/schemagen/codegen/omgidl"
	"github.com/teranos/schemagen/codegen/protobuf"
	"github.com/teranos/schemagen/codegen/rosmsg"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/schema"
	"github.com/teranos/schemagen/version"
)

// MCAP schema encodings.
const (
	EncodingJSONSchema = "jsonschema"
	EncodingProtobuf   = "protobuf"
	EncodingROS1       = "ros1msg"
	EncodingROS2       = "ros2msg"
	EncodingOMGIDL     = "omgidl"
)

// Encodings lists every supported encoding in the order records are written.
var Encodings = []string{EncodingJSONSchema, EncodingProtobuf, EncodingROS1, EncodingROS2, EncodingOMGIDL}

const megabyte = 1024 * 1024

// encoder produces the schema record of one message, or ok=false when the
// encoding does not carry that message.
type encoder func(msg *schema.Message) (name string, data []byte, ok bool, err error)

// Summary counts the schema records written per encoding.
type Summary map[string]int

func encoders(reg *registry.Registry, opts codegen.Options) map[string]encoder {
	js := jsonschema.New(reg, opts)
	pb := protobuf.New(reg, opts)
	idl := omgidl.New(reg, opts)

	ros := func(version rosmsg.Version) encoder {
		b := rosmsg.New(reg, opts, version)
		return func(msg *schema.Message) (string, []byte, bool, error) {
			if b.Skip(msg) {
				return "", nil, false, nil
			}
			text, err := b.FullDefinition(msg)
			return b.SchemaName(msg), []byte(text), true, err
		}
	}

	return map[string]encoder{
		EncodingJSONSchema: func(msg *schema.Message) (string, []byte, bool, error) {
			doc, err := js.RenderMessage(msg)
			return opts.Namespace + "." + msg.Name, []byte(doc), true, err
		},
		EncodingProtobuf: func(msg *schema.Message) (string, []byte, bool, error) {
			data, err := pb.MarshalFileDescriptorSet(msg)
			return opts.Namespace + "." + msg.Name, data, true, err
		},
		EncodingROS1: ros(rosmsg.ROS1),
		EncodingROS2: ros(rosmsg.ROS2),
		EncodingOMGIDL: func(msg *schema.Message) (string, []byte, bool, error) {
			text, err := idl.FullDefinition(msg)
			return opts.Namespace + "::" + msg.Name, []byte(text), true, err
		},
	}
}

// Write writes the schema records of every message of reg in the requested
// encodings (all when empty) as an MCAP file to w.
func Write(w io.Writer, reg *registry.Registry, opts codegen.Options, encodings []string) (Summary, error) {
	log := logger.ComponentLogger("bundle")
	if len(encodings) == 0 {
		encodings = Encodings
	}
	available := encoders(reg, opts)
	for _, enc := range encodings {
		if _, ok := available[enc]; !ok {
			return nil, errors.WithHintf(
				errors.Markf(errors.ErrUnsupported, "unknown schema encoding %q", enc),
				"supported encodings: %v", Encodings)
		}
	}

	writer, err := mcap.NewWriter(w, &mcap.WriterOptions{
		IncludeCRC:  true,
		Chunked:     true,
		ChunkSize:   4 * megabyte,
		Compression: mcap.CompressionZSTD,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build writer")
	}
	if err := writer.WriteHeader(&mcap.Header{Library: "schemagen " + version.Get().Version}); err != nil {
		return nil, errors.Wrap(err, "failed to write header")
	}

	summary := make(Summary)
	var id uint16
	for _, msg := range reg.Messages() {
		for _, enc := range encodings {
			name, data, ok, err := available[enc](msg)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: encode %s", enc, msg.Name)
			}
			if !ok {
				continue
			}
			if id == ^uint16(0) {
				return nil, errors.Newf("more than %d schema records", id)
			}
			id++
			if err := writer.WriteSchema(&mcap.Schema{ID: id, Name: name, Encoding: enc, Data: data}); err != nil {
				return nil, errors.Wrapf(err, "failed to write schema %s", name)
			}
			summary[enc]++
		}
	}

	if err := writer.WriteMetadata(&mcap.Metadata{
		Name: "schemagen",
		Metadata: map[string]string{
			"version":    version.Get().Version,
			"namespace":  opts.Namespace,
			"encodings":  fmt.Sprint(encodings),
			"provenance": opts.Provenance,
		},
	}); err != nil {
		return nil, errors.Wrap(err, "failed to write metadata")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close writer")
	}

	log.Infow("Wrote schema bundle",
		logger.FieldCount, int(id),
		"encodings", len(encodings))
	return summary, nil
}

// Schemas reads back the schema records of a bundle, keyed by encoding and name.
func Schemas(r io.ReadSeeker) (map[string]map[string][]byte, error) {
	reader, err := mcap.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build reader")
	}
	info, err := reader.Info()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read summary")
	}
	out := make(map[string]map[string][]byte)
	for _, s := range info.Schemas {
		if out[s.Encoding] == nil {
			out[s.Encoding] = make(map[string][]byte)
		}
		out[s.Encoding][s.Name] = s.Data
	}
	return out, nil
}

package protobuf

import (
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/schema"
)

var scalarTypes = map[schema.PrimitiveKind]descriptorpb.FieldDescriptorProto_Type{
	schema.KindString:  descriptorpb.FieldDescriptorProto_TYPE_STRING,
	schema.KindFloat64: descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	schema.KindUint32:  descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	schema.KindBoolean: descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	schema.KindBytes:   descriptorpb.FieldDescriptorProto_TYPE_BYTES,
}

func (b *Backend) messageFile(msg *schema.Message) (*descriptorpb.FileDescriptorProto, error) {
	fields, imports, err := b.plan(msg)
	if err != nil {
		return nil, err
	}

	dp := &descriptorpb.DescriptorProto{Name: proto.String(msg.Name)}
	for _, e := range b.reg.EnumsOf(msg.Name) {
		dp.EnumType = append(dp.EnumType, enumDescriptor(e))
	}
	for _, f := range fields {
		fd := &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(f.schema.Name),
			Number: proto.Int32(int32(f.schema.ID)),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		}
		if f.repeated {
			fd.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
		}
		switch f.ref.kind {
		case scalarKind:
			fd.Type = scalarTypes[f.ref.scalar].Enum()
		case enumKind:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
			fd.TypeName = proto.String(f.ref.fullName)
		case messageKind:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
			fd.TypeName = proto.String(f.ref.fullName)
		}
		dp.Field = append(dp.Field, fd)
	}

	return &descriptorpb.FileDescriptorProto{
		Name:        proto.String(b.Path(msg.Name)),
		Package:     proto.String(b.opts.Namespace),
		Syntax:      proto.String("proto3"),
		Dependency:  imports,
		MessageType: []*descriptorpb.DescriptorProto{dp},
	}, nil
}

func (b *Backend) enumFile(e *schema.Enum) *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:     proto.String(b.Path(e.Name)),
		Package:  proto.String(b.opts.Namespace),
		Syntax:   proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{enumDescriptor(e)},
	}
}

func enumDescriptor(e *schema.Enum) *descriptorpb.EnumDescriptorProto {
	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(e.Name)}
	for _, v := range enumValues(e) {
		ed.Value = append(ed.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(v.Name),
			Number: proto.Int32(int32(v.Value)),
		})
	}
	return ed
}

// fileFor returns the descriptor of the file at an import path.
func (b *Backend) fileFor(path string) (*descriptorpb.FileDescriptorProto, error) {
	switch path {
	case timestampImport:
		return protodesc.ToFileDescriptorProto(timestamppb.File_google_protobuf_timestamp_proto), nil
	case durationImport:
		return protodesc.ToFileDescriptorProto(durationpb.File_google_protobuf_duration_proto), nil
	}
	name := strings.TrimSuffix(strings.TrimPrefix(path, b.opts.Namespace+"/"), ".proto")
	if msg, ok := b.reg.Message(name); ok {
		return b.messageFile(msg)
	}
	if e, ok := b.reg.Enum(name); ok {
		return b.enumFile(e), nil
	}
	return nil, errors.Markf(errors.ErrUnresolvedReference, "no schema for import %s", path)
}

// FileDescriptorSet returns the file of msg and every file it imports,
// transitively, each dependency ahead of its dependents.
func (b *Backend) FileDescriptorSet(msg *schema.Message) (*descriptorpb.FileDescriptorSet, error) {
	set := &descriptorpb.FileDescriptorSet{}
	seen := make(map[string]bool)

	var collect func(path string) error
	collect = func(path string) error {
		if seen[path] {
			return nil
		}
		seen[path] = true
		fd, err := b.fileFor(path)
		if err != nil {
			return err
		}
		for _, dep := range fd.GetDependency() {
			if err := collect(dep); err != nil {
				return err
			}
		}
		set.File = append(set.File, fd)
		return nil
	}
	if err := collect(b.Path(msg.Name)); err != nil {
		return nil, err
	}
	return set, nil
}

// MarshalFileDescriptorSet returns the deterministic binary encoding of
// FileDescriptorSet(msg), as stored in MCAP schema records.
func (b *Backend) MarshalFileDescriptorSet(msg *schema.Message) ([]byte, error) {
	set, err := b.FileDescriptorSet(msg)
	if err != nil {
		return nil, err
	}
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(set)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal descriptor set of %s", msg.Name)
	}
	return data, nil
}

// Files builds the resolved descriptor registry of msg.
func (b *Backend) Files(msg *schema.Message) (*protoregistry.Files, error) {
	set, err := b.FileDescriptorSet(msg)
	if err != nil {
		return nil, err
	}
	files, err := protodesc.NewFiles(set)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create file descriptors for %s", msg.Name)
	}
	return files, nil
}

// MessageDescriptor returns the resolved descriptor of msg.
func (b *Backend) MessageDescriptor(msg *schema.Message) (protoreflect.MessageDescriptor, error) {
	files, err := b.Files(msg)
	if err != nil {
		return nil, err
	}
	fullName := protoreflect.FullName(b.opts.Namespace + "." + msg.Name)
	desc, err := files.FindDescriptorByName(fullName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find descriptor %s", fullName)
	}
	md, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, errors.AssertionFailedf("%s is not a message descriptor", fullName)
	}
	return md, nil
}

// VerifyMessage checks that the descriptor of msg resolves against its
// imports, that every field number equals the field ID, and that an empty
// message round-trips through the wire format.
func (b *Backend) VerifyMessage(msg *schema.Message, content string) error {
	if !strings.Contains(content, "message "+msg.Name+" {") {
		return errors.Newf("rendered file does not declare message %s", msg.Name)
	}
	md, err := b.MessageDescriptor(msg)
	if err != nil {
		return err
	}
	if md.Fields().Len() != len(msg.Fields) {
		return errors.Newf("descriptor of %s has %d fields, schema has %d", msg.Name, md.Fields().Len(), len(msg.Fields))
	}
	for _, f := range msg.Fields {
		fd := md.Fields().ByName(protoreflect.Name(f.Name))
		if fd == nil {
			return errors.Newf("descriptor of %s lacks field %s", msg.Name, f.Name)
		}
		if int(fd.Number()) != f.ID {
			return errors.Newf("field %s.%s has number %d, want id %d", msg.Name, f.Name, fd.Number(), f.ID)
		}
	}

	empty := dynamicpb.NewMessage(md)
	data, err := proto.Marshal(empty)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal empty %s", msg.Name)
	}
	if err := proto.Unmarshal(data, dynamicpb.NewMessage(md)); err != nil {
		return errors.Wrapf(err, "failed to unmarshal empty %s", msg.Name)
	}
	return nil
}

// Package catalog declares the canonical message schemas.
//
// Every schema lives in a package-level value and is registered by Register,
// so the whole set is visible to a reader in one place and is validated by a
// single registry build.
package catalog

import (
	"github.com/teranos/schemagen/registry"
	"github.com/teranos/schemagen/schema"
)

var enums = []schema.Enum{
	lineType,
	logLevel,
	numericType,
	positionCovarianceType,
	sceneEntityDeletionType,
}

var messages = []schema.Message{
	color,
	vector2,
	vector3,
	point2,
	point3,
	quaternion,
	pose,
	poseInFrame,
	posesInFrame,
	frameTransform,
	frameTransforms,
	linePrimitive,
	logMessage,
	packedElementField,
	pointCloud,
	compressedImage,
	keyValuePair,
	geoJSON,
	locationFix,
	sceneEntityDeletion,
	sceneEntity,
	sceneUpdate,
}

// Register declares every catalog schema on b.
func Register(b *registry.Builder) *registry.Builder {
	for _, e := range enums {
		b.AddEnum(e)
	}
	for _, m := range messages {
		b.AddMessage(m)
	}
	return b
}

// New builds a registry holding exactly the catalog.
func New() (*registry.Registry, error) {
	return Register(registry.NewBuilder()).Build()
}

package catalog

import "github.com/teranos/schemagen/schema"

var logLevel = schema.Enum{
	Name:        "LogLevel",
	Description: "Log level",
	Parent:      "Log",
	Values: []schema.EnumValue{
		{Name: "UNKNOWN", Value: 0, Description: "Unknown log level"},
		{Name: "DEBUG", Value: 1, Description: "Debug log level"},
		{Name: "INFO", Value: 2, Description: "Info log level"},
		{Name: "WARNING", Value: 3, Description: "Warning log level"},
		{Name: "ERROR", Value: 4, Description: "Error log level"},
		{Name: "FATAL", Value: 5, Description: "Fatal log level"},
	},
}

var logMessage = schema.Message{
	Name:        "Log",
	Description: "A log message",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 1, Description: "Timestamp of log message", Type: schema.Time},
		{Name: "level", ID: 2, Description: "Log level", Type: schema.EnumOf("LogLevel")},
		{Name: "message", ID: 3, Description: "Log message", Type: schema.String},
		{Name: "name", ID: 4, Description: "Process or node name", Type: schema.String},
		{Name: "file", ID: 5, Description: "Filename", Type: schema.String},
		{Name: "line", ID: 6, Description: "Line number in the file", Type: schema.Uint32},
	},
}

var numericType = schema.Enum{
	Name:        "NumericType",
	Description: "Numeric type",
	Parent:      "PackedElementField",
	Values: []schema.EnumValue{
		{Name: "UNKNOWN", Value: 0, Description: "Unknown numeric type"},
		{Name: "UINT8", Value: 1},
		{Name: "INT8", Value: 2},
		{Name: "UINT16", Value: 3},
		{Name: "INT16", Value: 4},
		{Name: "UINT32", Value: 5},
		{Name: "INT32", Value: 6},
		{Name: "FLOAT32", Value: 7},
		{Name: "FLOAT64", Value: 8},
	},
}

var packedElementField = schema.Message{
	Name:        "PackedElementField",
	Description: "A field present within each element in a byte array of packed elements.",
	Fields: []schema.Field{
		{Name: "name", ID: 1, Description: "Name of the field", Type: schema.String},
		{Name: "offset", ID: 2, Description: "Byte offset from start of data buffer", Type: schema.Uint32},
		{Name: "type", ID: 3, Description: "Type of data in the field. Integers are stored using little-endian byte order.", Type: schema.EnumOf("NumericType")},
	},
}

var pointCloud = schema.Message{
	Name:        "PointCloud",
	Description: "A collection of N-dimensional points, which may contain additional fields with information like normals, intensity, etc.",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 1, Description: "Timestamp of point cloud", Type: schema.Time},
		{Name: "frame_id", ID: 2, Description: "Frame of reference", Type: schema.String},
		{Name: "pose", ID: 3, Description: "The origin of the point cloud relative to the frame of reference", Type: schema.Nested("Pose")},
		{Name: "point_stride", ID: 4, Description: "Number of bytes between points in the `data`", Type: schema.Uint32},
		{Name: "fields", ID: 5,
			Description: "Fields in `data`. At least 2 coordinate fields from `x`, `y`, and `z` are required for each point's position; `red`, `green`, `blue`, and `alpha` are optional for customizing each point's color.",
			Type:        schema.Nested("PackedElementField"), Array: schema.VariableArray()},
		{Name: "data", ID: 6, Description: "Point data, interpreted using `fields`", Type: schema.Bytes},
	},
}

var compressedImage = schema.Message{
	Name:        "CompressedImage",
	Description: "A compressed image",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 1, Description: "Timestamp of image", Type: schema.Time},
		{Name: "frame_id", ID: 4, Description: "Frame of reference for the image. The origin of the frame is the optical center of the camera. +x points to the right in the image, +y points down, and +z points into the plane of the image.", Type: schema.String},
		{Name: "data", ID: 2, Description: "Compressed image data", Type: schema.Bytes},
		{Name: "format", ID: 3, Description: "Image format\n\nSupported values: `jpeg`, `png`, `webp`, `avif`", Type: schema.String},
	},
}

var keyValuePair = schema.Message{
	Name:        "KeyValuePair",
	Description: "A key with its associated value",
	Fields: []schema.Field{
		{Name: "key", ID: 1, Description: "Key", Type: schema.String},
		{Name: "value", ID: 2, Description: "Value", Type: schema.String},
	},
}

var geoJSON = schema.Message{
	Name:        "GeoJSON",
	Description: "GeoJSON data for annotating maps",
	Fields: []schema.Field{
		{Name: "geojson", ID: 1, Description: "GeoJSON data encoded as a UTF-8 string", Type: schema.String},
	},
}

var positionCovarianceType = schema.Enum{
	Name:        "PositionCovarianceType",
	Description: "Type of position covariance",
	Parent:      "LocationFix",
	Values: []schema.EnumValue{
		{Name: "UNKNOWN", Value: 0, Description: "Unknown position covariance type"},
		{Name: "APPROXIMATED", Value: 1, Description: "Position covariance is approximated"},
		{Name: "DIAGONAL_KNOWN", Value: 2, Description: "Position covariance is per-axis, so put it along the diagonal"},
		{Name: "KNOWN", Value: 3, Description: "Position covariance of the fix is known"},
	},
}

var locationFix = schema.Message{
	Name:        "LocationFix",
	Description: "A navigation satellite fix for any Global Navigation Satellite System",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 6, Description: "Timestamp of the message", Type: schema.Time},
		{Name: "frame_id", ID: 7, Description: "Frame for the sensor. Latitude and longitude readings are at the origin of the frame.", Type: schema.String},
		{Name: "latitude", ID: 1, Description: "Latitude in degrees", Type: schema.Float64},
		{Name: "longitude", ID: 2, Description: "Longitude in degrees", Type: schema.Float64},
		{Name: "altitude", ID: 3, Description: "Altitude in meters", Type: schema.Float64},
		{Name: "position_covariance", ID: 4,
			Description: "Position covariance (m^2) defined relative to a tangential plane through the reported position. The components are East, North, and Up (ENU), in row-major order.",
			Type:        schema.Float64, Array: schema.FixedArray(9)},
		{Name: "position_covariance_type", ID: 5,
			Description: "If `position_covariance` is available, `position_covariance_type` must be set to indicate the type of covariance.",
			Type:        schema.EnumOf("PositionCovarianceType")},
	},
}

var sceneEntityDeletionType = schema.Enum{
	Name:        "SceneEntityDeletionType",
	Description: "An enumeration indicating which entities should match a SceneEntityDeletion command",
	Parent:      "SceneEntityDeletion",
	Values: []schema.EnumValue{
		{Name: "MATCHING_ID", Value: 0, Description: "Delete the existing entity on the same topic that has the provided `id`"},
		{Name: "ALL", Value: 1, Description: "Delete all existing entities on the same topic"},
	},
}

var sceneEntityDeletion = schema.Message{
	Name:        "SceneEntityDeletion",
	Description: "Command to remove previously published entities",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 1, Description: "Timestamp of the deletion. Only matching entities earlier than this timestamp will be deleted.", Type: schema.Time},
		{Name: "type", ID: 2, Description: "Type of deletion action to perform", Type: schema.EnumOf("SceneEntityDeletionType")},
		{Name: "id", ID: 3, Description: "Identifier which must match if `type` is `MATCHING_ID`.", Type: schema.String},
	},
}

var sceneEntity = schema.Message{
	Name:        "SceneEntity",
	Description: "A visual element in a 3D scene. An entity may be composed of multiple primitives which all share the same frame of reference.",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 1, Description: "Timestamp of the entity", Type: schema.Time},
		{Name: "frame_id", ID: 2, Description: "Frame of reference", Type: schema.String},
		{Name: "id", ID: 3, Description: "Identifier for the entity. A entity will replace any prior entity on the same topic with the same `id`.", Type: schema.String},
		{Name: "lifetime", ID: 4, Description: "Length of time (relative to `timestamp`) after which the entity should be automatically removed. Zero value indicates the entity should remain visible until it is replaced or deleted.", Type: schema.Duration},
		{Name: "frame_locked", ID: 5, Description: "Whether the entity should keep its location in the fixed frame (false) or follow the frame specified in `frame_id` as it moves relative to the fixed frame (true)", Type: schema.Boolean},
		{Name: "metadata", ID: 6, Description: "Additional user-provided metadata associated with the entity. Keys must be unique.", Type: schema.Nested("KeyValuePair"), Array: schema.VariableArray()},
		{Name: "lines", ID: 7, Description: "Line primitives", Type: schema.Nested("LinePrimitive"), Array: schema.VariableArray()},
	},
}

var sceneUpdate = schema.Message{
	Name:        "SceneUpdate",
	Description: "An update to the entities displayed in a 3D scene",
	Fields: []schema.Field{
		{Name: "deletions", ID: 1, Description: "Scene entities to delete", Type: schema.Nested("SceneEntityDeletion"), Array: schema.VariableArray()},
		{Name: "entities", ID: 2, Description: "Scene entities to add or replace", Type: schema.Nested("SceneEntity"), Array: schema.VariableArray()},
	},
}

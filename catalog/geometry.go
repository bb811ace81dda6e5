package catalog

import "github.com/teranos/schemagen/schema"

var color = schema.Message{
	Name:        "Color",
	Description: "A color in RGBA format",
	Fields: []schema.Field{
		{Name: "r", ID: 1, Description: "Red value between 0 and 1", Type: schema.Float64, Default: 1.0},
		{Name: "g", ID: 2, Description: "Green value between 0 and 1", Type: schema.Float64, Default: 1.0},
		{Name: "b", ID: 3, Description: "Blue value between 0 and 1", Type: schema.Float64, Default: 1.0},
		{Name: "a", ID: 4, Description: "Alpha value between 0 and 1", Type: schema.Float64, Default: 1.0},
	},
}

var vector2 = schema.Message{
	Name:        "Vector2",
	Description: "A vector in 2D space that represents a direction only",
	Fields: []schema.Field{
		{Name: "x", ID: 1, Description: "x coordinate length", Type: schema.Float64, Default: 1.0},
		{Name: "y", ID: 2, Description: "y coordinate length", Type: schema.Float64, Default: 1.0},
	},
}

var vector3 = schema.Message{
	Name:          "Vector3",
	Description:   "A vector in 3D space that represents a direction only",
	RosEquivalent: "geometry_msgs/Vector3",
	Fields: []schema.Field{
		{Name: "x", ID: 1, Description: "x coordinate length", Type: schema.Float64, Default: 1.0},
		{Name: "y", ID: 2, Description: "y coordinate length", Type: schema.Float64, Default: 1.0},
		{Name: "z", ID: 3, Description: "z coordinate length", Type: schema.Float64, Default: 1.0},
	},
}

var point2 = schema.Message{
	Name:        "Point2",
	Description: "A point representing a position in 2D space",
	Fields: []schema.Field{
		{Name: "x", ID: 1, Description: "x coordinate position", Type: schema.Float64},
		{Name: "y", ID: 2, Description: "y coordinate position", Type: schema.Float64},
	},
}

var point3 = schema.Message{
	Name:          "Point3",
	Description:   "A point representing a position in 3D space",
	RosEquivalent: "geometry_msgs/Point",
	Fields: []schema.Field{
		{Name: "x", ID: 1, Description: "x coordinate position", Type: schema.Float64},
		{Name: "y", ID: 2, Description: "y coordinate position", Type: schema.Float64},
		{Name: "z", ID: 3, Description: "z coordinate position", Type: schema.Float64},
	},
}

var quaternion = schema.Message{
	Name:          "Quaternion",
	Description:   "A [quaternion](https://eater.net/quaternions) representing a rotation in 3D space",
	RosEquivalent: "geometry_msgs/Quaternion",
	Fields: []schema.Field{
		{Name: "x", ID: 1, Description: "x value", Type: schema.Float64},
		{Name: "y", ID: 2, Description: "y value", Type: schema.Float64},
		{Name: "z", ID: 3, Description: "z value", Type: schema.Float64},
		{Name: "w", ID: 4, Description: "w value", Type: schema.Float64, Default: 1.0},
	},
}

var pose = schema.Message{
	Name:          "Pose",
	Description:   "A position and orientation for an object or reference frame in 3D space",
	RosEquivalent: "geometry_msgs/Pose",
	Fields: []schema.Field{
		{Name: "position", ID: 1, Description: "Point denoting position in 3D space", Type: schema.Nested("Vector3")},
		{Name: "orientation", ID: 2, Description: "Quaternion denoting orientation in 3D space", Type: schema.Nested("Quaternion")},
	},
}

var poseInFrame = schema.Message{
	Name:        "PoseInFrame",
	Description: "A timestamped pose for an object or reference frame in 3D space",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 1, Description: "Timestamp of pose", Type: schema.Time},
		{Name: "frame_id", ID: 2, Description: "Frame of reference for pose position and orientation", Type: schema.String},
		{Name: "pose", ID: 3, Description: "Pose in 3D space", Type: schema.Nested("Pose")},
	},
}

var posesInFrame = schema.Message{
	Name:        "PosesInFrame",
	Description: "An array of timestamped poses for an object or reference frame in 3D space",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 1, Description: "Timestamp of pose", Type: schema.Time},
		{Name: "frame_id", ID: 2, Description: "Frame of reference for pose position and orientation", Type: schema.String},
		{Name: "poses", ID: 3, Description: "Poses in 3D space", Type: schema.Nested("Pose"), Array: schema.VariableArray()},
	},
}

var frameTransform = schema.Message{
	Name:        "FrameTransform",
	Description: "A transform between two reference frames in 3D space",
	Fields: []schema.Field{
		{Name: "timestamp", ID: 1, Description: "Timestamp of transform", Type: schema.Time},
		{Name: "parent_frame_id", ID: 2, Description: "Name of the parent frame", Type: schema.String},
		{Name: "child_frame_id", ID: 3, Description: "Name of the child frame", Type: schema.String},
		{Name: "translation", ID: 4, Description: "Translation component of the transform", Type: schema.Nested("Vector3")},
		{Name: "rotation", ID: 5, Description: "Rotation component of the transform", Type: schema.Nested("Quaternion")},
	},
}

var frameTransforms = schema.Message{
	Name:        "FrameTransforms",
	Description: "An array of FrameTransform messages",
	Fields: []schema.Field{
		{Name: "transforms", ID: 1, Description: "Array of transforms", Type: schema.Nested("FrameTransform"), Array: schema.VariableArray()},
	},
}

var lineType = schema.Enum{
	Name:        "LineType",
	Description: "An enumeration indicating how input points should be interpreted to create lines",
	Parent:      "LinePrimitive",
	Values: []schema.EnumValue{
		{Name: "LINE_STRIP", Value: 0, Description: "Connected line segments: 0-1, 1-2, ..., (n-1)-n"},
		{Name: "LINE_LOOP", Value: 1, Description: "Closed polygon: 0-1, 1-2, ..., (n-1)-n, n-0"},
		{Name: "LINE_LIST", Value: 2, Description: "Individual line segments: 0-1, 2-3, 4-5, ..."},
	},
}

var linePrimitive = schema.Message{
	Name:        "LinePrimitive",
	Description: "A primitive representing a series of points connected by lines",
	Fields: []schema.Field{
		{Name: "type", ID: 1, Description: "Drawing primitive to use for lines", Type: schema.EnumOf("LineType")},
		{Name: "pose", ID: 2, Description: "Origin of lines relative to reference frame", Type: schema.Nested("Pose")},
		{Name: "thickness", ID: 3, Description: "Line thickness", Type: schema.Float64, Default: 1.0},
		{Name: "scale_invariant", ID: 4,
			Description: "Indicates whether `thickness` is a fixed size in screen pixels (true), or specified in world coordinates and scales with distance from the camera (false)",
			Type:        schema.Boolean},
		{Name: "points", ID: 5, Description: "Points along the line", Type: schema.Nested("Point3"), Array: schema.VariableArray()},
		{Name: "color", ID: 6, Description: "Solid color to use for the whole line. One of `color` or `colors` must be provided.", Type: schema.Nested("Color")},
		{Name: "colors", ID: 7, Description: "Per-point colors (if specified, must have the same length as `points`). One of `color` or `colors` must be provided.",
			Type: schema.Nested("Color"), Array: schema.VariableArray()},
		{Name: "indices", ID: 8,
			Description: "Indices into the `points` and `colors` attribute arrays, which can be used to avoid duplicating attribute data.\n\nIf omitted or empty, indexing will not be used. This default behavior is equivalent to specifying [0, 1, ..., N-1] for the indices (where N is the number of `points` provided).",
			Type:        schema.Uint32, Array: schema.VariableArray()},
	},
}

package toolchain

// ObjectName is exported for testing.
var ObjectName = objectName

package watcher

// ConvertEvent exposes convertEvent for tests.
var ConvertEvent = convertEvent

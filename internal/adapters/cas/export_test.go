package cas

// ClassifyWriteError exposes classifyWriteError for tests.
var ClassifyWriteError = classifyWriteError

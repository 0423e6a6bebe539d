package commands

// JoinQuery exposes joinQuery for tests.
var JoinQuery = joinQuery

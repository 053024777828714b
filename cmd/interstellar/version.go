package main

// Version is the release version, overridden at build time via
// -ldflags "-X main.Version=...".
var Version = "0.1.0-dev"

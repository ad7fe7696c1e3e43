// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources. A field keeps the value
// of the first source that sets it:
//  1. Environment variables, after the optional .env file is loaded
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the HTTP server and
// [GetCLIConfig] for the admin tool.
package config

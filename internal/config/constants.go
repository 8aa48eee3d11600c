package config

import "time"

// Base application details
const AppName = "tidecore"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "tidecore.log"

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultHistoryDepth = 100
const SystemClipboard = false

const DefaultFoldMode = "indent"
const DefaultFoldDebounce = 150 * time.Millisecond

const DefaultSearchHistory = 50
const DefaultSearchTimeout = 2 * time.Second

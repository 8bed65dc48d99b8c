package config

// Base application details
const AppName = "ic10edit"
const DefaultConfigFileName = "config.toml"
const DefaultCompletionFileName = "devices.toml"
const DefaultLogFileName = "ic10edit.log"

// Editing defaults
const DefaultTabWidth = 4
const DefaultFrameBudgetMS = 4
const DefaultMaxHistoryMilestones = 100
const DefaultWordDelimiters = " \t.,;:()[]{}\"'=+-*/<>!#"
const SystemClipboard = true

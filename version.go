package gomacrots

// Version is the current release of the gomacrots module.
const Version = "0.1.0"

package internal

// Version is the current release of flashy
const Version = "0.3.0"

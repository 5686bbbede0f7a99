package notectl

// Version is the current notectl release.
const Version = "0.1.0"

package domain

// KeyPrefix namespaces every key the service writes to Redis/Valkey.
const KeyPrefix = "heartcheck:"

package domain

// KeyPrefix namespaces every store key written by this service.
const KeyPrefix = "capacita:"

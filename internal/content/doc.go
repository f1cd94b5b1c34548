// Package content defines the core types shared across the generation subsystems: the
// location and service reference data, the (location, service) task, the persisted content
// record, and the narrow interfaces adapters implement for storage, generation, archiving,
// and notification.
package content

// Package pipeline computes the outstanding (location, service) work set and drives it
// through the bounded dispatcher, producing a run Summary.
package pipeline

import "github.com/JakeFAU/areapages/internal/content"

// Enumerate returns every location × service pair whose key is not in existing, in
// location-then-service order. A nil existing set yields the full product.
func Enumerate(locations []content.Location, services []content.Service, existing content.KeySet) []content.Task {
	tasks := make([]content.Task, 0, len(locations)*len(services))
	for _, loc := range locations {
		for _, svc := range services {
			task := content.Task{Location: loc, Service: svc}
			if existing.Has(task.Key()) {
				continue
			}
			tasks = append(tasks, task)
		}
	}
	return tasks
}

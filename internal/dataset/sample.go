// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"
	"time"

	"github.com/gridkit/gridkit/internal/datatable"
)

// SampleFields is the field order of the sample users.
var SampleFields = []string{"id", "name", "email", "age", "status", "role", "last_login"}

var (
	sampleFirstNames = []string{"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Eve", "Frank"}
	sampleLastNames  = []string{"Doe", "Smith", "Johnson", "Brown", "Wilson", "Davis", "Miller", "Garcia"}
	sampleStatuses   = []string{"active", "inactive", "pending"}
	sampleRoles      = []string{"admin", "user", "moderator"}
)

// SampleUsers returns the five users shown by the demo and the catalog.
func SampleUsers() *Dataset {
	records := []datatable.Record{
		sampleUser(1, "John Doe", "john.doe@example.com", 32, "active", "admin", "2024-01-15T10:30:00Z"),
		sampleUser(2, "Jane Smith", "jane.smith@example.com", 28, "active", "user", "2024-01-14T15:45:00Z"),
		sampleUser(3, "Bob Johnson", "bob.johnson@example.com", 35, "inactive", "moderator", "2024-01-10T09:20:00Z"),
		sampleUser(4, "Alice Brown", "alice.brown@example.com", 29, "pending", "user", "2024-01-16T14:10:00Z"),
		sampleUser(5, "Charlie Wilson", "charlie.wilson@example.com", 41, "active", "admin", "2024-01-16T11:00:00Z"),
	}
	return &Dataset{Source: "sample", Format: FormatJSON, Fields: SampleFields, Records: records}
}

// GenerateUsers returns n synthetic users. The output is deterministic so
// that large-table renders are reproducible.
func GenerateUsers(n int) *Dataset {
	base := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	records := make([]datatable.Record, n)
	for i := range n {
		records[i] = datatable.Record{
			"id":         int64(i + 1),
			"name":       sampleFirstNames[i%len(sampleFirstNames)] + " " + sampleLastNames[i%len(sampleLastNames)],
			"email":      fmt.Sprintf("user%d@example.com", i+1),
			"age":        int64(20 + i%50),
			"status":     sampleStatuses[i%len(sampleStatuses)],
			"role":       sampleRoles[i%len(sampleRoles)],
			"last_login": base.Add(-time.Duration(i*37%720) * time.Hour),
		}
	}
	return &Dataset{Source: fmt.Sprintf("generated(%d)", n), Format: FormatJSON, Fields: SampleFields, Records: records}
}

func sampleUser(id int64, name, email string, age int64, status, role, lastLogin string) datatable.Record {
	login, err := time.Parse(time.RFC3339, lastLogin)
	if err != nil {
		panic(err)
	}
	return datatable.Record{
		"id":         id,
		"name":       name,
		"email":      email,
		"age":        age,
		"status":     status,
		"role":       role,
		"last_login": login,
	}
}

// ProductFields is the field order of the sample products.
var ProductFields = []string{"id", "name", "category", "price", "stock", "rating", "featured"}

// SampleProducts returns the product catalog used by the custom-render
// stories. Identities are strings.
func SampleProducts() *Dataset {
	product := func(id, name, category string, price float64, stock int64, rating float64, featured bool) datatable.Record {
		return datatable.Record{
			"id": id, "name": name, "category": category,
			"price": price, "stock": stock, "rating": rating, "featured": featured,
		}
	}
	return &Dataset{
		Source: "sample",
		Format: FormatJSON,
		Fields: ProductFields,
		Records: []datatable.Record{
			product("p1", "Wireless Headphones", "Electronics", 199.99, 45, 4.5, true),
			product("p2", "Coffee Maker", "Appliances", 89.99, 23, 4.2, false),
			product("p3", "Running Shoes", "Sports", 129.99, 67, 4.8, true),
			product("p4", "Desk Lamp", "Furniture", 45.99, 12, 4.1, false),
		},
	}
}

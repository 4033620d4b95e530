// Package domain holds the types shared by the scrape pipeline: search
// definitions, candidate and stored ads, notifications and trends.
package domain

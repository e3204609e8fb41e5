// Package sanitizer normalizes free-form customer input before validation.
package sanitizer

// Package processor transforms discovered assets into their decrypted or encrypted form.
// Assets are processed by a bounded worker group; each is read fully into memory,
// transformed, and written atomically to its planned output path.
package processor

// Package model defines the task and user types the engine operates on.
//
// A Task owns its notification hub; SetStatus is the single mutation path
// and the single notification trigger.
package model

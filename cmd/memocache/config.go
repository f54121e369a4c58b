package main

import (
	"reflect"

	"github.com/skipor/memocache/internal/util"
)

// mergeConfigs overwrites def values with non zero override values.
func mergeConfigs(def, override *InputConfig) {
	defVal := reflect.ValueOf(def).Elem()
	overrideVal := reflect.ValueOf(override).Elem()
	for i, end := 0, defVal.NumField(); i < end; i++ {
		overrideVal := overrideVal.Field(i)
		if !util.IsZeroVal(overrideVal) {
			defVal.Field(i).Set(overrideVal)
		}
	}
}

// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[scoring.Predictor]()
//	reg.Register("network", func(conf map[string]any) (scoring.Predictor, error) {
//	    var c struct{ Seed uint64 `json:"seed"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return scoring.NewNetwork(scoring.SeededWeights(c.Seed)), nil
//	})
package factory

// Package factory provides a small generic registry used to build pluggable
// modules from configuration. A module is described by a type name and a map
// of raw settings; registered factories decode the settings into typed structs
// and return the concrete implementation.
//
//	reg := factory.NewRegistry[metrics.MetricsSink]()
//	reg.Register("prometheus", func(conf map[string]any) (metrics.MetricsSink, error) {
//	    var c promConfig
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newPromSink(c)
//	})
//	sink, err := reg.Create(factory.ModuleConfig{Type: "prometheus", Conf: raw})
package factory

// Package mqtt publishes the store change feed to an MQTT broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Retained online/offline status with a Last Will and Testament
//   - One JSON message per successful insert, update or remove
//
// # Topics
//
//	localstore/<client_id>/status
//	localstore/<client_id>/change/<table>
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	svc, err := store.New(store.Options{
//	    ...
//	    Observer: mqtt.NewChangePublisher(client),
//	})
package mqtt

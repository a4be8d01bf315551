package page

import "bus-route/pkg/views"

// RetryID is the id of the retry control of the unavailable state
const RetryID = "unavailable-retry"

// ShowUnavailable replaces the main container with the content unavailable
// state. Clicking its retry control reloads the page.
func ShowUnavailable(doc *Document, events *Dispatcher) error {
	main, ok := doc.Element("main")
	if !ok {
		main = doc.Ensure("body")
	}

	markup, err := views.Render(views.Unavailable, nil)
	if err != nil {
		return err
	}
	main.HTML = markup
	doc.Ensure(RetryID)

	events.OnElement(RetryID, EventClick, func(*Event) { doc.Reload() })
	return nil
}

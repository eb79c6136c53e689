package component

// SwapMode is an hx-swap strategy. The default is SwapOuter.
type SwapMode string

const (
	SwapOuter       SwapMode = "outerHTML"
	SwapInner       SwapMode = "innerHTML"
	SwapBeforeEnd   SwapMode = "beforeend"
	SwapAfterEnd    SwapMode = "afterend"
	SwapBeforeBegin SwapMode = "beforebegin"
	SwapAfterBegin  SwapMode = "afterbegin"
	// SwapDelete removes the target and ignores the response body.
	SwapDelete SwapMode = "delete"
	// SwapNone discards the response. Out-of-band swaps still apply.
	SwapNone SwapMode = "none"
)

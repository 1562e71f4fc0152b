package wallet

import "regexp"

// MetaMaskDeepLinkBase is the universal-link prefix that opens the MetaMask
// mobile in-app browser on the given dapp page.
const MetaMaskDeepLinkBase = "https://metamask.app.link/dapp/"

var mobileUserAgent = regexp.MustCompile(`(?i)android|iphone|ipad|ipod|opera mini|iemobile|mobile`)

// IsMobileUserAgent reports whether the user agent string looks like a mobile
// environment, where the deep link is preferred over an install prompt.
func IsMobileUserAgent(ua string) bool {
	return mobileUserAgent.MatchString(ua)
}

// DeepLink builds the MetaMask mobile deep link pointing at the dapp's home
// page on the given host.
func DeepLink(host string) string {
	return MetaMaskDeepLinkBase + host + "/home"
}

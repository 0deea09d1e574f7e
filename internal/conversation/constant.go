package conversation

// DegradedText is sent to the customer whenever the backend round trip fails.
const DegradedText = "I'm having trouble processing that. Could you try again?"

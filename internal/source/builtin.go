package source

// Builtin is the payload used when no other source is selected. Paste code
// between the backquotes to change it.
const Builtin = `class Solution:
    def longestDecomposition(self, S: str) -> int:
        # Initialize result counter and left/right substring accumulators
        res, l, r = 0, '', ''
        
        # Iterate through the string from both ends simultaneously
        # i iterates from left to right, j iterates from right to left
        for i, j in zip(S, S[::-1]):
            # Build left substring by appending current character from left
            # Build right substring by prepending current character from right
            l, r = l + i, j + r
            
            # When left and right substrings match, we found a valid chunk pair
            if l == r:
                # Increment result count and reset substring accumulators
                res, l, r = res + 1, '', ''
        
        return res
`

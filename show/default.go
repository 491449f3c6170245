package show

// Default is the built-in playlist.
const Default = `show Halloween {
  set interval 70ms
  set origin 0 9
  set color #FF3200
  set hold 5s

  scroll " HAPPY HALLOWEEN!"
  image "pumpkin.bmp"
  scroll " TRICK OR TREAT!"
  image "ghosts.bmp"
  scroll " ENTER IF YOU DARE!"
  image "skull.bmp"
}
`
